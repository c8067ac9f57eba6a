package uid

import (
	"crypto/rand"
	"encoding/binary"
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates time-ordered int64 IDs.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a generator. The node number comes from the
// SNOWFLAKE_NODE env var when set, otherwise a random node is used.
func NewSnowflake() (*Snowflake, error) {
	var nodeID int64
	if raw := os.Getenv("SNOWFLAKE_NODE"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		nodeID = n % 1024
	} else {
		var b [8]byte
		if _, err := rand.Read(b[:]); err != nil {
			return nil, err
		}
		nodeID = int64(binary.BigEndian.Uint64(b[:]) % 1024)
	}

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new snowflake ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
