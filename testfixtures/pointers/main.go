package main

func increment(p *int) {
	*p = *p + 1
}

func main() {
	x := 0
	increment(&x)
}
