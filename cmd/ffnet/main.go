// Command ffnet trains and inspects small feedforward networks.
//
// To train on XOR: `go run ./cmd/ffnet train --hidden=2 --hidden-activation=sigmoid`
//
// To train on a dataset: `go run ./cmd/ffnet train --data-file=data.npz`, where
// data.npz holds x.npy (samples, inputs) and y.npy (samples, outputs).
//
// To print a freshly initialized network: `go run ./cmd/ffnet describe --inputs=3 --hidden=4,2 --outputs=1`
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&TrainCommand{}, "")
	subcommands.Register(&DescribeCommand{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
