package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// BlockNumber calls eth_blockNumber and returns the endpoint's head height.
func (c *Client) BlockNumber(ctx context.Context) (uint64, time.Duration, error) {
	resp, latency, err := c.Call(ctx, "eth_blockNumber")
	if err != nil {
		return 0, latency, err
	}

	var hexStr string
	if err := json.Unmarshal(resp.Result, &hexStr); err != nil {
		return 0, latency, fmt.Errorf("parse block number: %w", err)
	}

	height, err := ParseHexUint64(hexStr)
	if err != nil {
		return 0, latency, err
	}
	return height, latency, nil
}

// GetBlockByNumber calls eth_getBlockByNumber for blockNum, a hex quantity
// or a tag such as "latest". fullTx false requests transaction hashes only.
// A null result (block unknown to the endpoint) is an error, not a nil block.
func (c *Client) GetBlockByNumber(ctx context.Context, blockNum string, fullTx bool) (*Block, time.Duration, error) {
	resp, latency, err := c.Call(ctx, "eth_getBlockByNumber", blockNum, fullTx)
	if err != nil {
		return nil, latency, err
	}

	if len(resp.Result) == 0 || string(resp.Result) == "null" {
		return nil, latency, fmt.Errorf("%s: block %s not found", c.name, blockNum)
	}

	var block Block
	if err := json.Unmarshal(resp.Result, &block); err != nil {
		return nil, latency, fmt.Errorf("parse block: %w", err)
	}
	return &block, latency, nil
}
