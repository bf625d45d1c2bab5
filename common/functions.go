package common

import (
	"bytes"
	"encoding/json"
	"fmt"
)

func ByteSliceToIndentedJSONFormat(biteSlice []byte) (string, error) {
	var formattedJSON bytes.Buffer
	err := json.Indent(&formattedJSON, biteSlice, "", "    ")
	if err != nil {
		return "", fmt.Errorf("fatal: error formatting json.\ntrace: %w", err)
	}
	return formattedJSON.String(), nil
}

func DeserializeJSONForType[T any](data []byte) (*T, error) {
	var pointer T
	err := json.Unmarshal(data, &pointer)
	if err != nil {
		return nil, fmt.Errorf("fatal: error deserializing json.\ntrace: %w", err)
	}

	return &pointer, nil
}
