package main

type Animal interface {
	Speak() string
}

type Dog struct{}

func (Dog) Speak() string { return "woof" }

type Cat struct{}

func (Cat) Speak() string { return "meow" }

func announce(a Animal) string {
	return a.Speak()
}

func main() {
	animals := []Animal{Dog{}, Cat{}}
	for _, a := range animals {
		announce(a)
	}
}
