// Command elevsim simulates an elevator that always serves the nearest
// requested floor.
package main

import "github.com/sarchlab/elevsim/elevsim/cmd"

func main() {
	cmd.Execute()
}
