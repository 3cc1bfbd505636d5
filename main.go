package main

import "github.com/vietdv277/sm2env/cmd"

func main() {
	cmd.Execute()
}
