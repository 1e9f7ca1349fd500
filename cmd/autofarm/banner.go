package main

import "fmt"

const banner = `
    _         _         __
   / \  _   _| |_ ___  / _| __ _ _ __ _ __ ___
  / _ \| | | | __/ _ \| |_ / _` + "`" + ` | '__| '_ ` + "`" + ` _ \
 / ___ \ |_| | || (_) |  _| (_| | |  | | | | | |
/_/   \_\__,_|\__\___/|_|  \__,_|_|  |_| |_| |_|
`

func printBanner() {
	fmt.Print(banner + "\n")
}
