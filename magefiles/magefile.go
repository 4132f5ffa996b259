//go:build mage

package main

import (
	"context"
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Run all checks on the code.
func Check(c context.Context) error {
	fmt.Println("Checking...")

	for _, cmd := range []func(context.Context) error{
		Tidy,   // clean up the module dependencies
		Vet,    // catch suspicious constructs
		Test,   // verify the stuff you explicitly care about works
		Mutate, // check for untested code
	} {
		if err := cmd(c); err != nil {
			return fmt.Errorf("unable to finish checking: %w", err)
		}
	}

	return nil
}

// Tidy tidies up go.mod.
func Tidy(c context.Context) error {
	fmt.Println("Tidying go.mod...")
	return sh.RunV("go", "mod", "tidy")
}

// Vet runs go vet.
func Vet(c context.Context) error {
	fmt.Println("Vetting...")
	return sh.RunV("go", "vet", "./...")
}

// Run the unit tests.
func Test(c context.Context) error {
	fmt.Println("Running unit tests...")
	return sh.RunV(
		"go",
		"test",
		"-timeout=30s",
		"-race",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
		"./...",
	)
}

// Run the unit tests purely to find out whether any fail.
func TestForFail(c context.Context) error {
	fmt.Println("Running unit tests for overall pass/fail...")
	return sh.Run("go", "test", "-timeout=10s", "-failfast", "-shuffle=on", "./...")
}

// Run the mutation tests.
func Mutate(c context.Context) error {
	mg.CtxDeps(c, TestForFail)
	fmt.Println("Running mutation tests...")
	return sh.RunV("go", "test", "-tags=mutation", ".", "-run=TestMutation")
}

// Run the benchmarks.
func Bench(c context.Context) error {
	fmt.Println("Running benchmarks...")
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "./benchmarks/...")
}

// Clean up the dev env.
func Clean() error {
	fmt.Println("Cleaning...")
	return sh.Rm("coverage.out")
}
