package main

import "registry-ingest/cmd"

func main() {
	cmd.Execute()
}
