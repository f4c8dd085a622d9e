package chatter

import (
	"context"
	"fmt"

	"github.com/natserract/sfchatter/pkg/salesforce"
	"go.uber.org/zap"
)

// DefaultPluginName is the plugin name used when Register is given none.
const DefaultPluginName = "chatter"

// PluginHost is a Host that can also create named plugins.
type PluginHost interface {
	Host
	Plugin(name string) (*salesforce.Plugin, error)
}

// Register installs every operation on a new plugin called name (or
// DefaultPluginName). It fails if the host already has a plugin of that name.
func Register(host PluginHost, name string) (*Chatter, error) {
	logger, _ := zap.NewProduction()
	return RegisterWithLogger(host, name, logger)
}

// RegisterWithLogger is Register with a custom logger
func RegisterWithLogger(host PluginHost, name string, logger *zap.Logger) (*Chatter, error) {
	if name == "" {
		name = DefaultPluginName
	}

	plugin, err := host.Plugin(name)
	if err != nil {
		return nil, fmt.Errorf("failed to register %s plugin: %w", name, err)
	}

	c := NewWithLogger(host, logger)
	for _, op := range operations {
		fn := func(ctx context.Context, args salesforce.Args, cb salesforce.Callback) (*salesforce.Pending, error) {
			return c.run(ctx, op, args, cb)
		}
		if err := plugin.Fn(op.name, fn); err != nil {
			return nil, fmt.Errorf("failed to install %s.%s: %w", name, op.name, err)
		}
	}

	logger.Info("Registered plugin",
		zap.String("plugin", name),
		zap.Strings("operations", Operations()))

	return c, nil
}
