package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/rl1809/quantum-bookstore/internal/adapter/handler"
)

func main() {
	addr := flag.String("addr", "localhost:50051", "gRPC address of the bookstore server")
	isbn := flag.String("isbn", "ISBN001", "physical book to buy")
	totalRequests := flag.Int("requests", 50, "number of concurrent purchases")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("failed to dial: %v", err)
	}
	defer conn.Close()
	client := handler.NewBookstoreClient(conn)

	initialStock, err := stockOf(ctx, client, *isbn)
	if err != nil {
		log.Fatalf("failed to read stock: %v", err)
	}

	// Counters
	var successCount atomic.Int32
	var failCount atomic.Int32
	var errCount atomic.Int32
	var wg sync.WaitGroup

	start := time.Now()
	for i := 0; i < *totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.Purchase(ctx, &handler.PurchaseRequest{
				RequestID: uuid.NewString(),
				ISBN:      *isbn,
				Quantity:  1,
				Email:     "stress@example.com",
				Address:   "1 Load Street",
			})
			switch {
			case err != nil:
				errCount.Add(1)
			case resp.Success:
				successCount.Add(1)
			default:
				failCount.Add(1)
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	finalStock, err := stockOf(ctx, client, *isbn)
	if err != nil {
		log.Fatalf("failed to read stock: %v", err)
	}

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("ISBN:             %s\n", *isbn)
	fmt.Printf("Initial stock:    %d\n", initialStock)
	fmt.Printf("Total requests:   %d\n", *totalRequests)
	fmt.Printf("Successful:       %d\n", successCount.Load())
	fmt.Printf("Rejected:         %d\n", failCount.Load())
	fmt.Printf("Transport errors: %d\n", errCount.Load())
	fmt.Printf("Final stock:      %d\n", finalStock)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	if int(successCount.Load()) > initialStock {
		log.Fatalf("OVERSOLD: %d successes with stock %d", successCount.Load(), initialStock)
	}
	if initialStock-int(successCount.Load()) != finalStock {
		log.Fatalf("stock mismatch: %d - %d != %d", initialStock, successCount.Load(), finalStock)
	}
	fmt.Println("PASS: no overselling")
}

func stockOf(ctx context.Context, client *handler.BookstoreClient, isbn string) (int, error) {
	resp, err := client.ListBooks(ctx, &handler.ListBooksRequest{})
	if err != nil {
		return 0, err
	}
	for _, b := range resp.Books {
		if b.ISBN == isbn {
			if b.Stock == nil {
				return 0, fmt.Errorf("%s is not a physical book", isbn)
			}
			return *b.Stock, nil
		}
	}
	return 0, fmt.Errorf("%s not found", isbn)
}
