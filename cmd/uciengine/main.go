// Command uciengine runs the engine as a UCI-speaking process, reading
// commands from stdin and writing responses to stdout.
package main

import (
	"bufio"
	"log"
	"os"

	"github.com/lsanca/chesscore/notation"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetPrefix("info string ")
	log.SetFlags(log.Lshortfile)

	uci, err := notation.NewUCI()
	if err != nil {
		log.Fatal(err)
	}

	bio := bufio.NewReader(os.Stdin)
	for {
		line, _, err := bio.ReadLine()
		if err != nil {
			log.Println("error:", err)
			break
		}
		if err := uci.Execute(string(line)); err != nil {
			if err != notation.ErrQuit {
				log.Println("for line:", string(line))
				log.Println("error:", err)
				continue
			}
			break
		}
	}
}
