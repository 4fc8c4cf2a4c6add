package idgen

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	nodeMap sync.Map // map[string]*snowflake.Node
)

// InitNode initializes a named snowflake node.
func InitNode(name string, nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return fmt.Errorf("InitNode failed: %w", err)
	}
	nodeMap.Store(name, n)
	return nil
}

// Init initializes the default node used for transaction and payout IDs.
func Init(nodeID int64) {
	if err := InitNode("default", nodeID); err != nil {
		log.Fatalf("[IDGen] InitNode failed: %v", err)
	}
	log.Printf("[IDGen] snowflake node initialized: nodeID=%d", nodeID)
}

// NewFrom generates an ID from a named node.
func NewFrom(name string) uint64 {
	val, ok := nodeMap.Load(name)
	if !ok {
		panic(fmt.Sprintf("snowflake node not initialized: %s", name))
	}
	return uint64(val.(*snowflake.Node).Generate().Int64())
}

// New generates an ID from the default node.
func New() uint64 {
	return NewFrom("default")
}

// CheckSystemClock guards against clock moving backward; snowflake itself
// does not protect against rollback.
func CheckSystemClock() {
	last := time.Now().UnixMilli()
	ticker := time.NewTicker(time.Second)
	for now := range ticker.C {
		current := now.UnixMilli()
		if current < last {
			log.Fatalf("[IDGen] system clock moved backward: last=%d, now=%d", last, current)
		}
		last = current
	}
}
