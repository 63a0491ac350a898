package filmsync

import (
	"context"

	"github.com/alexflint/go-arg"
	"github.com/nathants/filmsync/lib"
)

func init() {
	lib.Commands["dynamodb-item-put"] = dynamodbItemPut
	lib.Args["dynamodb-item-put"] = dynamodbItemPutArgs{}
}

type dynamodbItemPutArgs struct {
	Table string   `arg:"positional,required"`
	Attrs []string `arg:"positional,required"`
}

func (dynamodbItemPutArgs) Description() string {
	return `
put item
describe vals like: $name:s|n:$value

>> filmsync dynamodb-item-put film_table film_id:s:1 title:s:"Academy Dinosaur" length:n:86
`
}

func dynamodbItemPut() {
	var args dynamodbItemPutArgs
	arg.MustParse(&args)
	ctx := context.Background()
	item, err := parseAttrs(args.Attrs)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	err = lib.DynamoDBPutItem(ctx, args.Table, item)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
}
