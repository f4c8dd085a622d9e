package salesforce

import (
	"context"
	"fmt"
	"sync"
)

// PluginFunc is an operation installed on a plugin.
type PluginFunc func(ctx context.Context, args Args, cb Callback) (*Pending, error)

// Plugin is a named extension point holding a set of functions.
type Plugin struct {
	name string
	mu   sync.RWMutex
	fns  map[string]PluginFunc
}

// Plugin creates the extension point name on the client. A name can only be
// created once per client.
func (c *Client) Plugin(name string) (*Plugin, error) {
	if name == "" {
		return nil, fmt.Errorf("plugin name is required")
	}

	c.pluginsMu.Lock()
	defer c.pluginsMu.Unlock()

	if _, ok := c.plugins[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrPluginExists, name)
	}
	p := &Plugin{name: name, fns: make(map[string]PluginFunc)}
	c.plugins[name] = p
	return p, nil
}

// Name returns the name the plugin was registered under.
func (p *Plugin) Name() string {
	return p.name
}

// Fn installs fn under name, replacing any previous function of that name.
func (p *Plugin) Fn(name string, fn PluginFunc) error {
	if name == "" {
		return fmt.Errorf("function name is required")
	}
	if fn == nil {
		return fmt.Errorf("function %s.%s is nil", p.name, name)
	}

	p.mu.Lock()
	p.fns[name] = fn
	p.mu.Unlock()
	return nil
}

// Fns returns the installed function names.
func (p *Plugin) Fns() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.fns))
	for name := range p.fns {
		names = append(names, name)
	}
	return names
}

func (p *Plugin) fn(name string) (PluginFunc, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	fn, ok := p.fns[name]
	return fn, ok
}

// Call invokes the function fn of the plugin named plugin. Lookup failures
// are reported through cb as well as returned.
func (c *Client) Call(ctx context.Context, plugin, fn string, args Args, cb Callback) (*Pending, error) {
	c.pluginsMu.RLock()
	p, ok := c.plugins[plugin]
	c.pluginsMu.RUnlock()
	if !ok {
		return nil, failCallback(fmt.Errorf("%w: %s", ErrUnknownPlugin, plugin), cb)
	}

	f, ok := p.fn(fn)
	if !ok {
		return nil, failCallback(fmt.Errorf("%w: %s.%s", ErrUnknownFunction, plugin, fn), cb)
	}
	return f(ctx, args, cb)
}

func failCallback(err error, cb Callback) error {
	if cb != nil {
		cb(err, nil)
	}
	return err
}
