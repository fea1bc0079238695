//go:build !tinygo

// Command osdsim runs the OSD menu engine on a desktop.
package main

func main() {
	Execute()
}
