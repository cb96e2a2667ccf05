package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"honnef.co/go/mp3tag"
)

func open(name string) (*mp3tag.File, error) {
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		return mp3tag.OpenURL(context.Background(), name)
	}
	return mp3tag.Open(name, mp3tag.WithoutV1Fallback())
}

func printFile(name string) {
	fmt.Println(name)
	f, err := open(name)
	if err != nil {
		fmt.Println(err)
		return
	}

	if !f.HasTag() {
		log.Println("no ID3v2.3 tag")
		return
	}

	tag := f.Tag()
	fmt.Println(tag.Header)
	for _, frame := range tag.AllFrames() {
		if !frame.Type.Known() {
			fmt.Printf("%s (unknown): %d bytes\n", string(frame.Type), frame.Size())
			continue
		}
		fmt.Printf("%s (%s): %s\n", string(frame.Type), frame.Type, frame.Body)
	}
	fmt.Printf("padding: %d bytes\n", tag.Padding())
	for _, diag := range f.Errors() {
		fmt.Println("invalid:", diag)
	}
}

func main() {
	verbose := pflag.BoolP("verbose", "v", false, "log decoding details")
	pflag.Parse()
	mp3tag.Logging = mp3tag.LogFlag(*verbose)

	if pflag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: id3print [-v] file|url...")
		os.Exit(2)
	}
	for _, name := range pflag.Args() {
		printFile(name)
		fmt.Println()
	}
}
