package validation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/radhian/order-validation-system/entity"
	"github.com/radhian/order-validation-system/infra/storage"
	"github.com/stretchr/testify/require"
)

func TestParseOrderFileSkipsMalformedRows(t *testing.T) {
	data := "order_id,order_date,product_id,quantity,sales,city\n" +
		"1,05/01/2024,P1,3,30,Bangalore\n" +
		"2,2024-01-05,P2,1,2.5,Mumbai,extra\n" +
		"3,not-a-date,P1,2,20,Mumbai\n" +
		"4,2024-01-05,P1,many,20,Mumbai\n" +
		"5,2024-01-05,P1,\"bad\"quote,20,Mumbai\n" +
		"6,2024-01-05,NA,,\n" +
		"\n" +
		"7, 2024-01-06 , P3 , 1 , 100 , Mumbai \n"

	records, skipped, err := parseOrderFile("in/a.csv", []byte(data))
	require.NoError(t, err)
	require.Equal(t, 3, skipped)
	require.Equal(t, []string{"1", "3", "6", "7"}, recordIDs(records))

	require.Equal(t, "2024-01-05", records[0].OrderDate.Format("2006-01-02"), "day-first date")
	require.Equal(t, "in/a.csv", records[0].SourceKey)

	require.Nil(t, records[1].OrderDate, "unparseable date becomes null")

	short := records[2]
	require.Empty(t, short.ProductID)
	require.False(t, short.Quantity.Valid)
	require.False(t, short.Sales.Valid)
	require.Empty(t, short.City)

	require.Equal(t, "P3", records[3].ProductID)
	require.Equal(t, "Mumbai", records[3].City)
	require.Equal(t, "100", records[3].Sales.Decimal.String())
}

func TestParseOrderFileRejectsUnusableFiles(t *testing.T) {
	_, _, err := parseOrderFile("empty.csv", nil)
	require.Error(t, err)

	_, _, err = parseOrderFile("nocity.csv", []byte("order_id,order_date,product_id,quantity,sales\n1,2024-01-05,P1,1,1\n"))
	require.Error(t, err)
}

func TestParseOrderFileHeaderOnly(t *testing.T) {
	records, skipped, err := parseOrderFile("h.csv", []byte("\xEF\xBB\xBFORDER_ID,order_date,product_id,quantity,sales,city\n"))
	require.NoError(t, err)
	require.Zero(t, skipped)
	require.Empty(t, records)
}

func TestReadIncomingFilesIsolatesFailures(t *testing.T) {
	ctx := context.Background()
	local := storage.NewLocalStore(t.TempDir())
	header := "order_id,order_date,product_id,quantity,sales,city\n"
	putObject(t, local, "incoming_files/20240105/a.csv", header+"1,2024-01-05,P1,3,30,Bangalore\n2,2024-01-05,P2,1,2.5,Mumbai\n")
	putObject(t, local, "incoming_files/20240105/b.CSV", header+"3,2024-01-05,P1,1,10,Mumbai\n")
	putObject(t, local, "incoming_files/20240105/broken.csv", "just,some,columns\n1,2,3\n")
	putObject(t, local, "incoming_files/20240105/unreadable.csv", header+"9,2024-01-05,P1,1,10,Mumbai\n")
	putObject(t, local, "incoming_files/20240105/notes.txt", "ignore me")
	putObject(t, local, "incoming_files/20240106/other.csv", header+"8,2024-01-06,P1,1,10,Mumbai\n")

	store := &failingStore{
		ObjectStore: local,
		getErr:      map[string]error{"incoming_files/20240105/unreadable.csv": errors.New("access denied")},
	}
	u := newTestUsecase(t, testConfig(t), store, &recordingNotifier{}, nil)

	result := u.ReadIncomingFiles(ctx, testBatchDate)

	require.ElementsMatch(t, []string{"1", "2", "3"}, recordIDs(result.Records))
	require.Len(t, result.Files, 4)

	failed := 0
	for _, f := range result.Files {
		if f.Err != nil {
			failed++
		}
	}
	require.Equal(t, 2, failed)
}

func TestReadIncomingFilesNoFiles(t *testing.T) {
	u := newTestUsecase(t, testConfig(t), storage.NewLocalStore(t.TempDir()), &recordingNotifier{}, nil)

	result := u.ReadIncomingFiles(context.Background(), testBatchDate)
	require.NotNil(t, result.Records)
	require.Empty(t, result.Records)
	require.Empty(t, result.Files)
}

func TestReadIncomingFilesListFailureIsNotFatal(t *testing.T) {
	store := &failingStore{ObjectStore: storage.NewLocalStore(t.TempDir()), listErr: errors.New("timeout")}
	u := newTestUsecase(t, testConfig(t), store, &recordingNotifier{}, nil)

	result := u.ReadIncomingFiles(context.Background(), testBatchDate)
	require.Empty(t, result.Records)
}

func recordIDs(records []entity.OrderRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.OrderID
	}
	return out
}

func TestReadIncomingFilesWithoutWorkerSetting(t *testing.T) {
	store := storage.NewLocalStore(t.TempDir())
	header := "order_id,order_date,product_id,quantity,sales,city\n"
	putObject(t, store, "incoming_files/20240105/a.csv", header+"1,2024-01-05,P1,3,30,Bangalore\n")
	putObject(t, store, "incoming_files/20240105/b.csv", header+"2,2024-01-05,P1,3,30,Mumbai\n")

	cfg := testConfig(t)
	cfg.SourceReadWorkers = 0
	u := newTestUsecase(t, cfg, store, &recordingNotifier{}, nil)

	done := make(chan entity.SourceReadResult, 1)
	go func() { done <- u.ReadIncomingFiles(context.Background(), testBatchDate) }()

	select {
	case result := <-done:
		require.Equal(t, []string{"1", "2"}, recordIDs(result.Records))
	case <-time.After(5 * time.Second):
		t.Fatal("ReadIncomingFiles did not return")
	}
}
