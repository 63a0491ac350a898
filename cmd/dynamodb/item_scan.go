package filmsync

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexflint/go-arg"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/nathants/filmsync/lib"
	"gopkg.in/yaml.v3"
)

func init() {
	lib.Commands["dynamodb-item-scan"] = dynamodbItemScan
	lib.Args["dynamodb-item-scan"] = dynamodbItemScanArgs{}
}

type dynamodbItemScanArgs struct {
	Table string `arg:"positional,required"`
	Limit int    `arg:"-l,--limit" default:"0"`
	Yaml  bool   `arg:"--yaml"`
}

func (dynamodbItemScanArgs) Description() string {
	return "\nscan dynamodb table\n"
}

func dynamodbItemScan() {
	var args dynamodbItemScanArgs
	arg.MustParse(&args)
	ctx := context.Background()
	err := lib.DynamoDBScan(ctx, args.Table, args.Limit, func(item map[string]ddbtypes.AttributeValue) error {
		val := make(map[string]any)
		err := attributevalue.UnmarshalMap(item, &val)
		if err != nil {
			return err
		}
		if args.Yaml {
			data, err := yaml.Marshal([]any{val})
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		}
		data, err := json.Marshal(val)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	})
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
}
