package colour

import (
	"context"
	"encoding/json"

	perr "palette/internal/platform/errors"
)

// DecodeJSON resolves a JSON-encoded colour name back to its canonical
// entry, so a decoded handle is pointer-equal to what the registry hands
// out. The counterpart of Colour's MarshalJSON
func DecodeJSON(ctx context.Context, data []byte) (*Colour, error) {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeValidation, "decode colour name")
	}
	return ValueOf(ctx, name)
}
