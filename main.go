// pagesim is a demand-paging simulator.
package main

import "github.com/sarchlab/pagesim/cmd"

func main() {
	cmd.Execute()
}
