package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime/pprof"
	"time"

	"github.com/ahmedtd/nn/ffnet"
	"github.com/google/subcommands"
	"gonum.org/v1/gonum/stat"
)

type TrainCommand struct {
	network networkFlags

	dataFile       string
	maxEpochs      int
	errorThreshold float64
	logEvery       int

	cpuProfileFile string
}

var _ subcommands.Command = (*TrainCommand)(nil)

func (*TrainCommand) Name() string {
	return "train"
}

func (*TrainCommand) Synopsis() string {
	return "Train a network with per-sample gradient descent"
}

func (*TrainCommand) Usage() string {
	return `train [flags]
`
}

func (c *TrainCommand) SetFlags(f *flag.FlagSet) {
	c.network.SetFlags(f)

	f.StringVar(&c.dataFile, "data-file", "", "Path to an npz file holding x.npy and y.npy (default: XOR)")
	f.IntVar(&c.maxEpochs, "max-epochs", 20000, "Stop after this many passes over the data")
	f.Float64Var(&c.errorThreshold, "error-threshold", 0.01, "Stop once the total error over an epoch drops below this")
	f.IntVar(&c.logEvery, "log-every", 1000, "Log progress every N epochs")

	f.StringVar(&c.cpuProfileFile, "cpu-profile", "", "Write a CPU profile")
}

func (c *TrainCommand) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.executeErr(ctx); err != nil {
		log.Printf("Error: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *TrainCommand) executeErr(ctx context.Context) error {
	if c.cpuProfileFile != "" {
		f, err := os.Create(c.cpuProfileFile)
		if err != nil {
			return fmt.Errorf("while creating CPU profile file: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("while starting CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	data := xorDataset()
	if c.dataFile != "" {
		var err error
		data, err = loadDataset(c.dataFile)
		if err != nil {
			return fmt.Errorf("while loading data set: %w", err)
		}
	}
	log.Printf("Data loaded: %d samples, %d inputs, %d outputs", len(data.x), data.inputSize(), data.outputSize())

	r := rand.New(rand.NewSource(c.network.seed))

	net, err := c.network.build(data.inputSize(), data.outputSize(), r)
	if err != nil {
		return fmt.Errorf("while building network: %w", err)
	}

	result, err := train(ctx, net, data, trainOptions{
		maxEpochs:      c.maxEpochs,
		errorThreshold: float32(c.errorThreshold),
		logEvery:       c.logEvery,
	}, r)
	if err != nil {
		return fmt.Errorf("while training: %w", err)
	}
	log.Printf("Finished after %d epochs, total error %f (converged=%v)", result.epochs, result.totalError, result.converged)

	for k := range data.x {
		if err := net.SetInputs(data.x[k]); err != nil {
			return fmt.Errorf("while setting inputs for sample %d: %w", k, err)
		}
		net.ForwardPass()
		log.Printf("sample %d input=%v expected=%v predicted=%v", k, data.x[k], data.y[k], net.Outputs())
	}

	return nil
}

type trainOptions struct {
	maxEpochs      int
	errorThreshold float32
	logEvery       int
}

type trainResult struct {
	epochs     int
	totalError float32
	converged  bool
}

type trainTimings struct {
	Overall  time.Duration
	Forward  time.Duration
	Backward time.Duration
}

func (t *trainTimings) Reset() {
	t.Overall = 0 * time.Second
	t.Forward = 0 * time.Second
	t.Backward = 0 * time.Second
}

// train presents every sample once per epoch, in a shuffled order, with one
// forward and one backward pass each.  The epoch's total error is the sum of
// the errors returned by the backward passes.
func train(ctx context.Context, net *ffnet.Network, data *dataset, opts trainOptions, r *rand.Rand) (trainResult, error) {
	order := make([]int, len(data.x))
	for k := range order {
		order[k] = k
	}
	sampleErrors := make([]float64, len(data.x))

	var timings trainTimings
	result := trainResult{}

	for epoch := 0; epoch < opts.maxEpochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		start := time.Now()

		r.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		var total float32
		for _, k := range order {
			if err := net.SetInputs(data.x[k]); err != nil {
				return result, fmt.Errorf("while setting inputs for sample %d: %w", k, err)
			}

			forwardStart := time.Now()
			net.ForwardPass()
			timings.Forward += time.Since(forwardStart)

			backwardStart := time.Now()
			e, err := net.BackwardPass(data.y[k])
			if err != nil {
				return result, fmt.Errorf("while backpropagating sample %d: %w", k, err)
			}
			timings.Backward += time.Since(backwardStart)

			sampleErrors[k] = float64(e)
			total += e
		}

		timings.Overall += time.Since(start)

		result.epochs = epoch + 1
		result.totalError = total

		if opts.logEvery > 0 && epoch%opts.logEvery == 0 {
			mean, std := stat.MeanStdDev(sampleErrors, nil)
			log.Printf("epoch %d total-error=%f mean-sample-error=%f stddev=%f", epoch, total, mean, std)
			log.Printf("epoch %d timings overall=%.3f forward=%.3f backward=%.3f",
				epoch,
				timings.Overall.Seconds(),
				timings.Forward.Seconds(),
				timings.Backward.Seconds(),
			)
			timings.Reset()
		}

		if total < opts.errorThreshold {
			result.converged = true
			return result, nil
		}
	}

	return result, nil
}
