package registry_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/completions"
	"github.com/footprint-tools/gshell/internal/registry"
)

func nopDescriptor(name string) *command.Descriptor {
	return &command.Descriptor{
		Name: name,
		Factory: command.Singleton(command.ActionFunc(func(*command.Context) (any, error) {
			return nil, nil
		})),
	}
}

// Run with -race.
func TestRegistry_MutationsWhileResolving(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(nopDescriptor("echo")))

	index := completions.NewIndex()
	detach := reg.Attach(index)
	defer detach()

	const rounds = 200
	var wg sync.WaitGroup
	failures := make(chan error, 4*rounds)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range rounds {
			name := fmt.Sprintf("tools/c%d", i%10)
			if err := reg.Register(nopDescriptor(name)); err != nil {
				failures <- err
			}
			_ = reg.Unregister(name)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range rounds {
			name := fmt.Sprintf("a%d", i%10)
			if err := reg.DefineAlias(name, "echo "+name); err != nil {
				failures <- err
			}
			_ = reg.RemoveAlias(name)
		}
	}()

	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range rounds {
				if _, err := reg.Resolve("echo", "tools"); err != nil {
					failures <- err
				}
				_, _ = reg.Resolve("c3", "tools")
				_ = index.Candidates()
				_ = index.Complete("tools/")
				_ = reg.Names()
			}
		}()
	}

	wg.Wait()
	close(failures)
	for err := range failures {
		require.NoError(t, err)
	}

	require.Contains(t, reg.Names(), "echo")
	for _, c := range index.Candidates() {
		require.NotContains(t, c.Name, "tools/c")
	}
}
