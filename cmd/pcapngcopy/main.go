// pcapngcopy reads a pcap-ng capture from stdin and rewrites it to stdout,
// re-encoding every packet through this module's own writer. It is mainly
// useful for normalizing a capture written by a lenient third-party writer
// (unpadded final block, non-default timestamp resolution) into this
// module's canonical single-section, single-interface, microsecond-
// resolution form.
package main

import (
	"bufio"
	"io"
	"log"
	"os"

	"github.com/timpalpant/go-pcapng/pcapng"
)

func main() {
	input := bufio.NewReader(os.Stdin)
	reader, err := pcapng.NewReader(input)
	if err != nil {
		log.Fatal(err)
	}

	output := bufio.NewWriter(os.Stdout)
	defer output.Flush()

	writer, err := pcapng.Open(output, reader.LinkType(), reader.SnapLen())
	if err != nil {
		log.Fatal(err)
	}
	defer writer.Close()

	for {
		pkt, err := reader.ReadPacket()
		if err != nil {
			if err == io.EOF {
				break
			}
			log.Fatal(err)
		}

		tsUsec := pkt.TimestampSec*1000000 + pkt.TimestampUsec
		if err := writer.WritePacket(tsUsec, pkt.CapturedLength, pkt.Length, pkt.Data, pkt.Comment); err != nil {
			log.Fatal(err)
		}
	}
}
