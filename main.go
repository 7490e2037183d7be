package main

import "github.com/JuliusHayter/albert-hod-101-2025-1/cmd"

func main() {
	cmd.Execute()
}
