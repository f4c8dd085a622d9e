package main

import (
	"fmt"
	"strings"

	"github.com/natserract/sfchatter/pkg/salesforce"
	"github.com/natserract/sfchatter/pkg/salesforce/chatter"
)

type call struct {
	operation string
	args      salesforce.Args
}

// parseCalls turns "op key=value ... -- op key=value ..." into calls.
func parseCalls(argv []string) ([]call, error) {
	var calls []call
	var current *call

	for _, token := range argv {
		if token == "--" {
			current = nil
			continue
		}
		if current == nil {
			if _, ok := chatter.Required(token); !ok {
				return nil, fmt.Errorf("unknown operation %q", token)
			}
			calls = append(calls, call{operation: token, args: salesforce.Args{}})
			current = &calls[len(calls)-1]
			continue
		}

		key, value, ok := strings.Cut(token, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%s: argument %q is not key=value", current.operation, token)
		}
		current.args[key] = value
	}

	if len(calls) == 0 {
		return nil, fmt.Errorf("no operation given")
	}
	return calls, nil
}

func usage() string {
	var b strings.Builder
	b.WriteString("usage: chatter <operation> [key=value ...] [-- <operation> [key=value ...]]\n\noperations:\n")
	for _, name := range chatter.Operations() {
		required, _ := chatter.Required(name)
		fmt.Fprintf(&b, "  %-16s %s\n", name, strings.Join(required, " "))
	}
	return b.String()
}
