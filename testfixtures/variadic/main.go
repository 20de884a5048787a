package main

func sum(base int, rest ...int) int {
	total := base
	for _, r := range rest {
		total += r
	}
	return total
}

func main() {
	sum(1, 2, 3, 4)
	sum(1)
}
