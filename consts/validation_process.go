package consts

const (
	// Validation process status codes
	StatusInit     = 1
	StatusRunning  = 2
	StatusFinished = 3
	StatusFailed   = 4

	// Source file status codes
	FileStatusParsed  = 1
	FileStatusSkipped = 2

	// Output partitions
	PartitionClean    = "clean"
	PartitionRejected = "rejected"

	// Output file names inside the dated folder
	CleanFileName    = "clean_file.csv"
	RejectedFileName = "error_file.csv"

	// Dated folder and notification date layouts
	BatchFolderLayout = "20060102"
	BatchDateLayout   = "2006-01-02"

	// Default config
	DefaultReadWorkers    = 4
	DefaultWorkerNumber   = 1
	DefaultIntervalInSec  = 2
	DefaultRunSchedule    = "0 6 * * *"
	DefaultHTTPPort       = "8080"
	DefaultIncomingPrefix = "incoming_files/"
	DefaultSuccessPrefix  = "success/"
	DefaultRejectedPrefix = "rejected/"
	DefaultReferencePath  = "product_master.csv"

	SystemOperator = "system"
)
