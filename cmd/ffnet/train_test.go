package main

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

func TestTrainXOR(t *testing.T) {
	data := xorDataset()

	for seed := int64(1); seed <= 10; seed++ {
		nf := defaultNetworkFlags(t, "--hidden=3")
		r := rand.New(rand.NewSource(seed))
		net, err := nf.build(data.inputSize(), data.outputSize(), r)
		if err != nil {
			t.Fatalf("build: %v", err)
		}

		result, err := train(context.Background(), net, data, trainOptions{
			maxEpochs:      20000,
			errorThreshold: 0.01,
		}, r)
		if err != nil {
			t.Fatalf("train: %v", err)
		}
		if result.converged {
			if result.totalError >= 0.01 {
				t.Errorf("converged with total error %v", result.totalError)
			}
			return
		}
		t.Logf("seed %d stopped at total error %v", seed, result.totalError)
	}
	t.Errorf("no seed converged on XOR")
}

func TestTrainStopsOnCancel(t *testing.T) {
	data := xorDataset()
	nf := defaultNetworkFlags(t)
	r := rand.New(rand.NewSource(1))
	net, err := nf.build(data.inputSize(), data.outputSize(), r)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := train(ctx, net, data, trainOptions{maxEpochs: 10}, r); !errors.Is(err, context.Canceled) {
		t.Errorf("train error = %v, want context.Canceled", err)
	}
}

func TestTrainRespectsMaxEpochs(t *testing.T) {
	data := xorDataset()
	nf := defaultNetworkFlags(t)
	r := rand.New(rand.NewSource(1))
	net, err := nf.build(data.inputSize(), data.outputSize(), r)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	result, err := train(context.Background(), net, data, trainOptions{maxEpochs: 3, errorThreshold: 0}, r)
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if result.epochs != 3 || result.converged {
		t.Errorf("epochs=%d converged=%v, want 3 false", result.epochs, result.converged)
	}
}
