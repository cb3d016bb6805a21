/*
Copyright © 2026 The tabload authors
*/
package main

import "tabload/cmd"

func main() {
	cmd.Execute()
}
