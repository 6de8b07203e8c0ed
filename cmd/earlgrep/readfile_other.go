//go:build !unix

package main

import "os"

func readFile(name string) ([]byte, func() error, error) {
	b, err := os.ReadFile(name)
	return b, noRelease, err
}
