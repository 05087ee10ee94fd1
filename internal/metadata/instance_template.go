package metadata

// InstanceTemplateLayouts is the detail view of an instance template.
var InstanceTemplateLayouts = ResourceMeta{Layouts: []Layout{
	ListLayout("Instance Template",
		ItemLayout("Instance", "",
			TextField("ID", "data.id"),
			TextField("Name", "data.name"),
			TextField("Description", "data.description"),
			TextField("Fingerprint", "data.fingerprint"),
			ListField("In Used By", "data.in_used_by"),
			TextField("Machine Type", "data.machine.machine_type"),
			ListField("Affected Rules", "data.affected_rules"),
			BoolEnumField("IP Forward", "data.ip_forward"),
			TextField("Self Link", "data.self_link"),
			DateTimeField("Creation Time", "data.creation_timestamp"),
		),
		ItemLayout("Machine Info", "data.machine",
			TextField("Name", "machine_type"),
			TextField("Core", "core"),
			TextField("Memory", "memory"),
		),
		ItemLayout("Service Account", "data.service_account",
			TextField("E-mail", "email"),
			ListField("Scopes", "scopes"),
		),
	),
	TableLayout("Network Interface", "data.network_interfaces",
		TextField("Name", "name"),
		TextField("Network", "network"),
		TextField("Subnetwork", "subnetwork"),
		ListField("Access Configs", "configs"),
		ListField("Network Tier", "network_tier"),
		TextField("Kind", "kind"),
	),
	TableLayout("Disks", "data.disks",
		TextField("Index", "device_index"),
		TextField("Name", "device"),
		TextField("Size(GB)", "size"),
		OutlineEnumField("Disk Type", "tags.disk_type", "local-ssd", "pd-balanced", "pd-ssd", "pd-standard"),
		TextField("Source Image", "tags.source_image_display"),
		TextField("Read IOPS", "tags.read_iops"),
		TextField("Write IOPS", "tags.write_iops"),
		TextField("Read Throughput(MB/s)", "tags.read_throughput"),
		TextField("Write Throughput(MB/s)", "tags.write_throughput"),
		BoolEnumField("Auto Delete", "tags.auto_delete"),
	),
	TableLayout("Labels", "data.labels",
		TextField("Key", "key"),
		TextField("Value", "value"),
	),
}}

// InstanceTemplateType registers instance templates.
var InstanceTemplateType = computeEngineType("InstanceTemplate", []string{"Compute"}, TypeMeta{
	Fields: []Field{
		TextField("Name", "data.name"),
		TextField("Machine Type", "data.machine.machine_display"),
		TextField("Image", "data.image"),
		TextField("Disk Type", "data.disk_display"),
		ListField("In Used By", "data.in_used_by"),
		DateTimeField("Creation Time", "data.creation_timestamp"),
	},
	Search: []SearchField{
		{Name: "Name", Key: "data.name"},
		{Name: "Machine Type", Key: "data.machine.machine_type"},
		{Name: "Image", Key: "data.image"},
		{Name: "Disk Type", Key: "data.disk_display"},
		{Name: "In Use By", Key: "data.in_used_by"},
		{Name: "Creation Time", Key: "data.creation_timestamp", DataType: "datetime"},
	},
})
