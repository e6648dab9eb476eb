package copyjson_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jigucci/copyjson"
)

// ExampleConvert decodes a small COPY text dump into line-delimited JSON.
// Declarations describe the dump's columns in order; \N marks NULL.
func ExampleConvert() {
	schema, err := copyjson.ParseSchema([]string{"id:integer", "name:text", "active:boolean"})
	if err != nil {
		log.Fatal(err)
	}

	input := "1\tAlice\tt\n" +
		"2\t\\N\tf\n"
	if err := copyjson.Convert(schema, strings.NewReader(input), os.Stdout); err != nil {
		log.Fatal(err)
	}

	// Output:
	// {"id":1,"name":"Alice","active":true}
	// {"id":2,"name":null,"active":false}
}

// ExampleConvert_arrays shows one-dimensional array columns. Array
// literals keep PostgreSQL's {...} surface form on the wire and become
// JSON arrays on output.
func ExampleConvert_arrays() {
	schema, err := copyjson.ParseSchema([]string{"id:integer", "tags:text[]", "scores:integer[]"})
	if err != nil {
		log.Fatal(err)
	}

	input := "1\t{go,sql}\t{90,NULL,85}\n" +
		"2\t{}\t\\N\n"
	if err := copyjson.Convert(schema, strings.NewReader(input), os.Stdout); err != nil {
		log.Fatal(err)
	}

	// Output:
	// {"id":1,"tags":["go","sql"],"scores":[90,null,85]}
	// {"id":2,"tags":[],"scores":null}
}

// ExampleConvertContext_skipPolicy keeps converting past undecodable
// lines instead of aborting. Skipped lines are reported through the
// configured logger.
func ExampleConvertContext_skipPolicy() {
	schema, err := copyjson.ParseSchema([]string{"id:integer"})
	if err != nil {
		log.Fatal(err)
	}

	opts := copyjson.NewOptions().WithErrorPolicy(copyjson.ErrorPolicySkip)

	input := "1\nnot-a-number\n3\n"
	if err := copyjson.ConvertContext(context.Background(), schema, strings.NewReader(input), os.Stdout, opts); err != nil {
		log.Fatal(err)
	}

	// Output:
	// {"id":1}
	// {"id":3}
}

// ExampleParseSchema builds a schema from PostgreSQL type spellings.
// Aliases such as int8 or varchar resolve to their normalized types.
func ExampleParseSchema() {
	schema, err := copyjson.ParseSchema([]string{
		"id:int8",
		"title:varchar",
		"price:double precision",
		"updated:timestamp(3) without time zone",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(strings.Join(schema.Columns(), ", "))

	// Output:
	// id, title, price, updated
}
