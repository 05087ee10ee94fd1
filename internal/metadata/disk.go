package metadata

var diskStatus = map[string][]string{
	"green.500":  {"READY"},
	"yellow.500": {"CREATING", "RESTORING"},
	"red.500":    {"FAILED", "DELETING"},
}

var diskTypes = []string{"local-ssd", "pd-balanced", "pd-ssd", "pd-standard", "pd-extreme"}

// DiskLayouts is the detail view of a persistent disk.
var DiskLayouts = ResourceMeta{Layouts: []Layout{
	ItemLayout("Disk", "",
		TextField("ID", "data.id"),
		TextField("Name", "data.name"),
		EnumField("Status", "data.status", diskStatus),
		OutlineEnumField("Disk Type", "data.disk_type", diskTypes...),
		SizeField("Size", "data.size", "GB"),
		TextField("Zone", "data.zone"),
		ListField("In Used By", "data.in_used_by"),
		ListField("Snapshot Schedule", "data.snapshot_schedule_display"),
		TextField("Encryption Type", "data.encryption"),
		TextField("Source Image", "data.source_image_display"),
		TextField("Physical Block Size (Bytes)", "data.physical_block_size_bytes"),
		TextField("Read IOPS", "data.read_iops"),
		TextField("Write IOPS", "data.write_iops"),
		TextField("Read Throughput(MB/s)", "data.read_throughput"),
		TextField("Write Throughput(MB/s)", "data.write_throughput"),
		DateTimeField("Creation Time", "data.creation_timestamp"),
		DateTimeField("Last Attach Time", "data.last_attach_timestamp"),
		DateTimeField("Last Detach Time", "data.last_detach_timestamp"),
	),
	TableLayout("Snapshot Schedule", "data.snapshot_schedule",
		TextField("Name", "name"),
		TextField("Region", "region"),
		ListField("Schedule Frequency (UTC)", "snapshot_schedule_policy.schedule_display"),
		TextField("Auto-delete Snapshots After", "snapshot_schedule_policy.retention_policy.max_retention_days_display"),
		ListField("Storage Locations", "storage_locations"),
		DateTimeField("Creation Time", "creation_timestamp"),
	),
	TableLayout("Labels", "data.labels",
		TextField("Key", "key"),
		TextField("Value", "value"),
	),
}}

// DiskType registers persistent disks.
var DiskType = func() CloudServiceType {
	t := computeEngineType("Disk", []string{"Compute", "Storage"}, TypeMeta{
		Fields: []Field{
			EnumField("Status", "data.status", diskStatus),
			TextField("Zone", "data.zone"),
			OutlineEnumField("Type", "data.disk_type", diskTypes...),
			SizeField("Size", "data.size", "GB"),
			ListField("In Used By", "data.in_used_by"),
			ListField("Snapshot Schedule", "data.snapshot_schedule_display"),
			TextField("Encryption", "data.encryption"),
			DateTimeField("Creation Time", "data.creation_timestamp"),
		},
		Search: []SearchField{
			{Name: "ID", Key: "data.id"},
			{Name: "Name", Key: "data.name"},
			{Name: "Status", Key: "data.status"},
			{Name: "Disk Type", Key: "data.disk_type"},
			{Name: "Size (GB)", Key: "data.size", DataType: "float"},
			{Name: "Zone", Key: "data.zone"},
			{Name: "Snapshot Schedule", Key: "data.snapshot_schedule_display"},
			{Name: "Encryption", Key: "data.encryption"},
			{Name: "Creation Time", Key: "data.creation_timestamp", DataType: "datetime"},
		},
	})
	t.IsPrimary = true
	return t
}()
