// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// Command lbf parses and executes a single .lbf circuit file, either
// against randomly generated boolean inputs or a fixed input assignment.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/luxfi/lbf/circuit"
	"github.com/luxfi/lbf/exec"
	"github.com/luxfi/lbf/gpu"
	"github.com/luxfi/lbf/lbf"
	"github.com/luxfi/lbf/lbferr"
	"github.com/luxfi/lbf/tfhe"
)

var log = logrus.New()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logError(err)
		os.Exit(1)
	}
}

func logError(err error) {
	var lbfErr *lbferr.Error
	if errors.As(err, &lbfErr) {
		log.WithFields(logrus.Fields{"kind": lbfErr.Kind.String(), "context": lbfErr.Context}).Error(lbfErr.Error())
		return
	}
	log.Error(err.Error())
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lbf",
		Short: "Execute LBF boolean circuits under TFHE functional bootstrapping",
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		threads  int
		seed     uint64
		input    string
		logLevel string
		stats    bool
	)

	cmd := &cobra.Command{
		Use:   "run <path.lbf>",
		Short: "Parse and execute an LBF boolean-circuit file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return lbferr.Wrap(lbferr.Validate, "--log-level", err)
			}
			log.SetLevel(level)

			return runLBF(cmd.Context(), args[0], threads, seed, input, stats)
		},
	}

	cmd.Flags().IntVar(&threads, "threads", 1, "worker count; 1 runs the sequential executor")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "PCG seed for the random boolean input generator")
	cmd.Flags().StringVar(&input, "input", "", "path to a literal 0/1 input assignment file (one NAME VALUE pair per line); overrides --seed")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "logrus level: trace, debug, info, warn, error")
	cmd.Flags().BoolVar(&stats, "stats", false, "print node-kind counts before executing")

	return cmd
}

func runLBF(ctx context.Context, path string, threads int, seed uint64, inputPath string, printStats bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return lbferr.Wrap(lbferr.Parse, path, err)
	}

	params, err := tfhe.NewParametersFromLiteral(tfhe.PN10QP27)
	if err != nil {
		return lbferr.Wrap(lbferr.Execute, "build tfhe parameters", err)
	}

	c, err := lbf.Parse(string(src), params.PtMod())
	if err != nil {
		return err
	}

	if dangling := c.DanglingSignals(); len(dangling) > 0 {
		log.WithFields(logrus.Fields{"signals": dangling}).Warn("circuit defines signals that are never referenced or declared as outputs")
	}

	if printStats {
		s := c.ComputeStats()
		log.WithFields(logrus.Fields{
			"inputs":            s.Inputs,
			"lincombs":          s.LinCombs,
			"bootstraps":        s.Bootstraps,
			"bootstrap_outputs": s.BootstrapOutputs,
			"outputs":           s.Outputs,
		}).Info("circuit stats")
	}

	assignment, err := loadAssignment(c, seed, inputPath)
	if err != nil {
		return err
	}

	keygenStart := time.Now()
	kg := tfhe.NewKeyGenerator(params)
	sk := kg.GenSecretKey()
	bsk := kg.GenBootstrapKey(sk)
	srv := tfhe.NewServer(params, bsk)
	enc := tfhe.NewEncryptor(params, sk)
	dec := tfhe.NewDecryptor(params, sk)
	keygenDuration := time.Since(keygenStart)

	encryptStart := time.Now()
	cipherInputs := make(map[circuit.SignalID]*tfhe.Ciphertext, len(assignment))
	for id, v := range assignment {
		cipherInputs[id] = enc.EncryptWithMessageModulus(v)
	}
	encryptDuration := time.Since(encryptStart)

	execStart := time.Now()
	var results map[circuit.SignalID]*tfhe.Ciphertext
	if threads <= 1 {
		log.Debug("running sequential executor")
		results, err = exec.RunSequential(c, srv, cipherInputs)
	} else {
		accel := gpu.New()
		log.WithFields(logrus.Fields{"threads": threads, "accelerator": accel.Describe()}).Debug("running parallel executor")
		results, err = exec.RunParallelWithAccelerator(ctx, c, srv, cipherInputs, threads, accel)
	}
	execDuration := time.Since(execStart)
	if err != nil {
		return err
	}

	decryptStart := time.Now()
	for _, id := range c.Outputs {
		v := dec.DecryptMessageAndCarry(results[id])
		fmt.Printf("%s = %d\n", c.Table.Name(id), v)
	}
	decryptDuration := time.Since(decryptStart)

	log.WithFields(logrus.Fields{
		"keygen":  keygenDuration,
		"encrypt": encryptDuration,
		"exec":    execDuration,
		"decrypt": decryptDuration,
	}).Debug("timings")

	return nil
}

// loadAssignment returns a value per declared circuit input, either read
// from a "NAME VALUE" file or generated with a seeded PCG source.
func loadAssignment(c *circuit.Circuit, seed uint64, inputPath string) (map[circuit.SignalID]uint64, error) {
	if inputPath == "" {
		rng := rand.New(rand.NewPCG(seed, seed))
		assignment := make(map[circuit.SignalID]uint64, len(c.Inputs))
		for _, id := range c.Inputs {
			assignment[id] = uint64(rng.IntN(2))
		}
		return assignment, nil
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, lbferr.Wrap(lbferr.Parse, inputPath, err)
	}

	byName := make(map[string]uint64)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, lbferr.New(lbferr.Parse, fmt.Sprintf("input file: malformed line %q", line))
		}
		var v uint64
		if _, err := fmt.Sscanf(fields[1], "%d", &v); err != nil {
			return nil, lbferr.Wrap(lbferr.Parse, fmt.Sprintf("input file: bad value %q", fields[1]), err)
		}
		byName[fields[0]] = v
	}

	assignment := make(map[circuit.SignalID]uint64, len(c.Inputs))
	for _, id := range c.Inputs {
		name := c.Table.Name(id)
		v, ok := byName[name]
		if !ok {
			return nil, lbferr.New(lbferr.Parse, fmt.Sprintf("input file: missing value for %q", name))
		}
		assignment[id] = v
	}

	return assignment, nil
}
