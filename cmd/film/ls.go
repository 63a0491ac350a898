package filmsync

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexflint/go-arg"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/nathants/filmsync/film"
	"github.com/nathants/filmsync/lib"
)

func init() {
	lib.Commands["film-ls"] = filmLs
	lib.Args["film-ls"] = filmLsArgs{}
}

type filmLsArgs struct {
	Table string `arg:"positional" default:"film_table"`
	Limit int    `arg:"-l,--limit" default:"0"`
}

func (filmLsArgs) Description() string {
	return `
list films stored in dynamodb, one json object per line

>> filmsync film-ls film_table --limit 10
`
}

func filmLs() {
	var args filmLsArgs
	arg.MustParse(&args)
	ctx := context.Background()
	err := lib.DynamoDBScan(ctx, args.Table, args.Limit, func(item map[string]ddbtypes.AttributeValue) error {
		f, err := film.FilmFromItem(item)
		if err != nil {
			return err
		}
		data, err := json.Marshal(f)
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
