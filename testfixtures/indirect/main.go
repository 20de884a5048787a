package main

func add(a, b int) int { return a + b }

func sub(a, b int) int { return a - b }

func apply(f func(int, int) int, a, b int) int {
	return f(a, b)
}

func main() {
	fns := []func(int, int) int{add, sub}
	for _, f := range fns {
		apply(f, 1, 2)
	}
}
