package main

var registry []func()

func registerAtExit(f func()) {
	registry = append(registry, f)
}

func closeDB() {}

func closeLog() {}

func init() {
	registerAtExit(closeDB)
	registerAtExit(closeLog)
}

func run() {}

func main() {
	run()
}
