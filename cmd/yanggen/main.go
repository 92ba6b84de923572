// Package main is the entry point for yanggen.
package main

func main() {
	Execute()
}
