// Command turtle drives, simulates or remote-controls a turtle drawing robot.
package main

func main() {
	Execute()
}
