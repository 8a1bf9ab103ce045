/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ssargent/srex/cmd/srex/cmd"

func main() {
	cmd.Execute()
}
