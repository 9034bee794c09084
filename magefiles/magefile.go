//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Test mg.Namespace

// Runs the root module tests.
func (Test) Unit() error {
	return goTest(".")
}

// Runs the donburi bridge tests in the nested ecs module.
func (Test) ECS() error {
	return goTest("ecs")
}

// Runs every test suite.
func (Test) All() {
	mg.SerialDeps(Test.Unit, Test.ECS)
}

// Runs go vet over both modules.
func Vet() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return fmt.Errorf("vet: %w", err)
	}
	if err := sh.RunV("go", "-C", "ecs", "vet", "./..."); err != nil {
		return fmt.Errorf("vet ecs: %w", err)
	}
	return nil
}

type Run mg.Namespace

// Runs the scene switching example.
func (Run) Cubes() error {
	return runExample("cubes")
}

// Runs the coroutine and tween example.
func (Run) Coroutines() error {
	return runExample("coroutines")
}
