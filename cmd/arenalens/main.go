// ABOUTME: Entry point for the arenalens command
// ABOUTME: Inspects arena snapshots and runs a sample collection workload

package main

func main() {
	execute()
}
