package storage

import (
	"fmt"

	"github.com/bytedance/sonic"
)

func encode(value any) ([]byte, error) {
	data, err := sonic.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}
	return data, nil
}

func decode(data []byte, dest any) error {
	if err := sonic.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}
