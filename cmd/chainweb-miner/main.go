package main

import (
	"os"

	"github.com/LabMember-001/chainweb-node/log"
)

func main() {
	if err := Execute(); err != nil {
		log.Errorf("chainweb-miner exited with error: %v", err)
		os.Exit(1)
	}
}
