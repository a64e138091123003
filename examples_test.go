package fmdl

import (
	"fmt"
	"strings"
)

func Example() {
	book, err := TrainLines([]string{
		"ababab",
		"ababab",
	}, Options{Iterations: 2, MinCount: 2})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, tok := range book.Tokens() {
		fmt.Printf("%s %d\n", tok, book.Count(tok))
	}
	// Output:
	// ab 6
}

func ExampleTrain() {
	// The | separator is protected: no learned token ever spans it.
	corpus, err := NewCorpus(
		strings.NewReader("do|re|mi|do|re|mi"),
		CorpusOptions{Stopwords: []string{"|"}},
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	book, err := Train(corpus, Options{Iterations: 1, MinCount: 2})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, tok := range book.Tokens() {
		fmt.Printf("%s %d\n", tok, book.Count(tok))
	}
	// Output:
	// do 2
	// mi 2
	// re 2
	// | 5
}
