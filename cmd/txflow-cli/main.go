package main

import "wallet-txflow/cmd/txflow-cli/cmd"

func main() {
	cmd.Execute()
}
