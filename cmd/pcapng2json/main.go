// pcapng2json is a small binary for dumping the packets in a capture file
// (classic pcap or pcap-ng, optionally gzipped) as JSON.
//
// The capture is read from stdin and the resulting JSON records are
// written to stdout, one per line.
package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"os"
	"time"

	"github.com/timpalpant/go-pcapng/savefile"
)

type packetRecord struct {
	Timestamp     time.Time `json:"timestamp"`
	CaptureLength int       `json:"captureLength"`
	Length        int       `json:"length"`
	Data          string    `json:"data"`
}

func main() {
	input := bufio.NewReader(os.Stdin)
	source, err := savefile.Open(input)
	if err != nil {
		log.Fatal(err)
	}

	output := bufio.NewWriter(os.Stdout)
	defer output.Flush()
	enc := json.NewEncoder(output)

	for {
		data, ci, err := source.ReadPacketData()
		if err != nil {
			if err == io.EOF {
				break
			}
			log.Fatal(err)
		}

		rec := packetRecord{
			Timestamp:     ci.Timestamp,
			CaptureLength: ci.CaptureLength,
			Length:        ci.Length,
			Data:          hex.EncodeToString(data),
		}
		if err := enc.Encode(rec); err != nil {
			log.Fatal(err)
		}
	}
}
