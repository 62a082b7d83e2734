package monitor

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/joeycumines/go-alternator"
	"github.com/joeycumines/go-alternator/alternatortest"
)

func TestAlternator(t *testing.T) {
	alternatortest.TestSuite(t, alternatortest.Config{
		Name:    Name,
		Factory: Factory,
	})
}

func ExampleNew() {
	a, err := New(
		alternator.WithBudget(5),
		alternator.WithOutput(os.Stdout),
	)
	if err != nil {
		panic(err)
	}
	if err := a.Run(context.Background()); err != nil {
		panic(err)
	}
	fmt.Println(`finished`)
	//output:
	//A 1
	//B 1
	//A 2
	//B 2
	//A 3
	//finished
}
