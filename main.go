package main

import "github.com/edurede/school-registry/cmd"

func main() {
	cmd.Execute()
}
