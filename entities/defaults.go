package entities

// Entity type names of the default vocabulary.
const (
	Account            = "Account"
	Alert              = "Alert"
	Algorithm          = "Algorithm"
	AzureResource      = "AzureResource"
	CloudApplication   = "CloudApplication"
	Dns                = "Dns"
	ElevationToken     = "ElevationToken"
	File               = "File"
	FileHash           = "FileHash"
	GeoLocation        = "GeoLocation"
	Host               = "Host"
	HostLogonSession   = "HostLogonSession"
	IoTDevice          = "IoTDevice"
	IpAddress          = "IpAddress"
	Mailbox            = "Mailbox"
	Malware            = "Malware"
	NetworkConnection  = "NetworkConnection"
	OSFamily           = "OSFamily"
	Process            = "Process"
	RegistryHive       = "RegistryHive"
	RegistryKey        = "RegistryKey"
	RegistryValue      = "RegistryValue"
	SecurityGroup      = "SecurityGroup"
	SubmissionMail     = "SubmissionMail"
	Threatintelligence = "Threatintelligence"
	Url                = "Url"
)

// Default returns a new catalog with the standard security entity types.
func Default() *Catalog {
	return NewCatalog(
		NewEntityType(Account),
		NewEntityType(Alert),
		NewEntityType(Algorithm),
		NewEntityType(AzureResource),
		NewEntityType(CloudApplication),
		NewEntityType(Dns, "hostname"),
		NewEntityType(ElevationToken),
		NewEntityType(File),
		NewEntityType(FileHash),
		NewEntityType(GeoLocation),
		NewEntityType(Host, "hostname"),
		NewEntityType(HostLogonSession),
		NewEntityType(IoTDevice),
		NewEntityType(IpAddress, "ipv4", "ipv6"),
		NewEntityType(Mailbox, "email"),
		NewEntityType(Malware),
		NewEntityType(NetworkConnection),
		NewEntityType(OSFamily),
		NewEntityType(Process),
		NewEntityType(RegistryHive),
		NewEntityType(RegistryKey),
		NewEntityType(RegistryValue),
		NewEntityType(SecurityGroup),
		NewEntityType(SubmissionMail),
		NewEntityType(Threatintelligence),
		NewEntityType(Url, "uri"),
	)
}
