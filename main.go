package main

import "github.com/worklink/worklink-backend/cmd"

func main() {
	cmd.Execute()
}
