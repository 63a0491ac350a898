package filmsync

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/nathants/filmsync/lib"
)

func init() {
	lib.Commands["dynamodb-item-get"] = dynamodbItemGet
	lib.Args["dynamodb-item-get"] = dynamodbItemGetArgs{}
}

type dynamodbItemGetArgs struct {
	Table string   `arg:"positional,required"`
	Keys  []string `arg:"positional,required"`
}

func (dynamodbItemGetArgs) Description() string {
	return `
get item
describe keys like: $name:s|n:$value

>> filmsync dynamodb-item-get film_table film_id:s:1
`
}

func dynamodbItemGet() {
	var args dynamodbItemGetArgs
	arg.MustParse(&args)
	ctx := context.Background()
	key, err := parseAttrs(args.Keys)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	out, err := lib.DynamoDBClient().GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(args.Table),
		Key:       key,
	})
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	if out.Item == nil {
		os.Exit(1)
	}
	val := make(map[string]any)
	err = attributevalue.UnmarshalMap(out.Item, &val)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	data, err := json.Marshal(val)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	fmt.Println(string(data))
}
