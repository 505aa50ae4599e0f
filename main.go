package main

import "github.com/theirongolddev/liftlog/cmd"

func main() {
	cmd.Execute()
}
