package main

import "github.com/gaurav-prasanna/dwlg/cmd"

func main() {
	cmd.Execute()
}
