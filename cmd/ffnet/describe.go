package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/ahmedtd/nn/ffnet"
	"github.com/google/subcommands"
)

type DescribeCommand struct {
	network networkFlags

	inputs  int
	outputs int
	values  string
}

var _ subcommands.Command = (*DescribeCommand)(nil)

func (*DescribeCommand) Name() string {
	return "describe"
}

func (*DescribeCommand) Synopsis() string {
	return "Build a network and print its neurons"
}

func (*DescribeCommand) Usage() string {
	return `describe [flags]
`
}

func (c *DescribeCommand) SetFlags(f *flag.FlagSet) {
	c.network.SetFlags(f)

	f.IntVar(&c.inputs, "inputs", 2, "Number of input neurons, not counting bias")
	f.IntVar(&c.outputs, "outputs", 1, "Number of output neurons")
	f.StringVar(&c.values, "values", "", "Comma-separated input values; when set, run a forward pass before printing")
}

func (c *DescribeCommand) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.executeErr(ctx); err != nil {
		log.Printf("Error: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *DescribeCommand) executeErr(ctx context.Context) error {
	r := rand.New(rand.NewSource(c.network.seed))

	net, err := c.network.build(c.inputs, c.outputs, r)
	if err != nil {
		return fmt.Errorf("while building network: %w", err)
	}

	if c.values != "" {
		values, err := parseValues(c.values)
		if err != nil {
			return err
		}
		if err := net.SetInputs(values); err != nil {
			return fmt.Errorf("while setting inputs: %w", err)
		}
		net.ForwardPass()
	}

	return writeNetwork(os.Stdout, net)
}

func parseValues(s string) ([]float32, error) {
	values := []float32{}
	for _, field := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
		if err != nil {
			return nil, fmt.Errorf("while parsing input value %q: %w", field, err)
		}
		values = append(values, float32(v))
	}
	return values, nil
}

// writeNetwork renders every layer of net, one line per neuron, using only the
// network's read accessors.
func writeNetwork(w io.Writer, net *ffnet.Network) error {
	for l, layer := range net.Layers() {
		if _, err := fmt.Fprintf(w, "layer %d (%v) len=%d fan-out=%d\n", l, layer.Kind(), layer.Len(), layer.FanOut()); err != nil {
			return err
		}
		for i, n := range layer.All() {
			line := fmt.Sprintf("  %d %-6v in=%.6f out=%.6f", i, n.Kind(), n.InputValue(), n.OutputValue())
			if weights, err := n.Weights(); err == nil {
				line += fmt.Sprintf(" weights=%s", formatWeights(weights))
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatWeights(weights []float32) string {
	parts := make([]string, len(weights))
	for i, v := range weights {
		parts[i] = strconv.FormatFloat(float64(v), 'f', 6, 32)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
