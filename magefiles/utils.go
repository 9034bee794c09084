//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// goTest runs go test ./... inside the module rooted at dir.
func goTest(dir string) error {
	args := []string{"-C", dir, "test", "-count=1"}
	if mg.Verbose() {
		args = append(args, "-v")
	}
	args = append(args, "./...")
	fmt.Println("Testing", dir)
	if err := sh.RunV("go", args...); err != nil {
		return fmt.Errorf("test %s: %w", dir, err)
	}
	return nil
}

func runExample(name string) error {
	fmt.Printf("Run %s example...\n", name)
	return sh.RunV("go", "run", "./examples/"+name)
}
