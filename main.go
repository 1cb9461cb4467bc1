package main

import "github.com/llehouerou/musicbox/cmd"

func main() {
	cmd.Execute()
}
