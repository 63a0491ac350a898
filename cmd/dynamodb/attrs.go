package filmsync

import (
	"fmt"
	"strings"

	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/nathants/filmsync/lib"
)

// parseAttrs reads values like film_id:s:1 or length:n:86.
func parseAttrs(values []string) (map[string]ddbtypes.AttributeValue, error) {
	item := map[string]ddbtypes.AttributeValue{}
	for _, value := range values {
		name, kind, val, err := lib.SplitTwice(value, ":")
		if err != nil {
			return nil, err
		}
		switch strings.ToUpper(kind) {
		case "S":
			item[name] = &ddbtypes.AttributeValueMemberS{Value: val}
		case "N":
			item[name] = &ddbtypes.AttributeValueMemberN{Value: val}
		default:
			return nil, fmt.Errorf("unknown attribute type: %s", value)
		}
	}
	return item, nil
}
