// Package fieldcompat holds the static compatibility tables that map
// canonical field ids to concrete attribute names and warehouse column
// alias sets. Everything here is pure and stateless; reconciliation decides
// what to do with the lookups.
package fieldcompat

import "strings"

// attributeOverrides maps canonical field ids to the native attribute name
// used by the reference catalog vendor. An override is the strongest match
// signal reconciliation has.
var attributeOverrides = map[string]string{
	"guid":                      "guid",
	"name":                      "name",
	"asset_type":                "typeName",
	"qualified_name":            "qualifiedName",
	"status":                    "__state",
	"connector_name":            "connectorName",
	"owner_users":               "ownerUsers",
	"owner_groups":              "ownerGroups",
	"admin_users":               "adminUsers",
	"admin_groups":              "adminGroups",
	"description":               "description",
	"readme":                    "readme",
	"glossary_terms":            "meanings",
	"has_lineage":               "__hasLineage",
	"is_primary_key":            "isPrimary",
	"is_foreign_key":            "isForeign",
	"tags":                      "classificationNames",
	"certificate_status":        "certificateStatus",
	"certificate_message":       "certificateStatusMessage",
	"policy_count":              "assetPoliciesCount",
	"dq_soda_status":            "assetSodaDQStatus",
	"mc_is_monitored":           "assetMcIsMonitored",
	"popularity_score":          "popularityScore",
	"query_count":               "queryCount",
	"query_user_count":          "queryUserCount",
	"connection_qualified_name": "connectionQualifiedName",
	"database_qualified_name":   "databaseQualifiedName",
	"schema_qualified_name":     "schemaQualifiedName",
	"domain_guids":              "domainGUIDs",
	"created_at":                "__timestamp",
	"updated_at":                "__modificationTimestamp",
	"source_updated_at":         "sourceUpdatedAt",
}

// aliasGroups maps canonical field ids to accepted warehouse column
// spellings, most specific first.
var aliasGroups = map[string][]string{
	"guid":                      {"GUID"},
	"name":                      {"ASSET_NAME", "NAME"},
	"asset_type":                {"ASSET_TYPE", "TYPE_NAME", "TYPENAME"},
	"qualified_name":            {"ASSET_QUALIFIED_NAME", "QUALIFIED_NAME", "QUALIFIEDNAME"},
	"status":                    {"STATUS"},
	"connector_name":            {"CONNECTOR_NAME", "CONNECTORNAME"},
	"owner_users":               {"OWNER_USERS", "OWNERUSERS"},
	"owner_groups":              {"OWNER_GROUPS", "OWNERGROUPS"},
	"admin_users":               {"ADMIN_USERS", "ADMINUSERS"},
	"admin_groups":              {"ADMIN_GROUPS", "ADMINGROUPS"},
	"description":               {"DESCRIPTION", "USER_DESCRIPTION", "USERDESCRIPTION"},
	"readme":                    {"README", "README_GUID", "READMEGUID"},
	"glossary_terms":            {"TERM_GUIDS", "TERMGUIDS", "MEANINGS", "ASSIGNEDTERMS"},
	"has_lineage":               {"HAS_LINEAGE", "HASLINEAGE", "__HASLINEAGE"},
	"is_primary_key":            {"IS_PRIMARY_KEY", "ISPRIMARYKEY"},
	"is_foreign_key":            {"IS_FOREIGN_KEY", "ISFOREIGNKEY"},
	"tags":                      {"TAGS", "CLASSIFICATIONNAMES", "CLASSIFICATION_NAMES"},
	"certificate_status":        {"CERTIFICATE_STATUS", "CERTIFICATESTATUS"},
	"certificate_message":       {"CERTIFICATE_STATUS_MESSAGE", "CERTIFICATESTATUSMESSAGE"},
	"policy_count":              {"ASSET_POLICIES_COUNT", "ASSETPOLICIESCOUNT"},
	"dq_soda_status":            {"ASSET_SODA_DQ_STATUS", "ASSETSODADQSTATUS"},
	"mc_is_monitored":           {"ASSET_MC_IS_MONITORED", "ASSETMCISMONITORED"},
	"popularity_score":          {"POPULARITY_SCORE", "POPULARITYSCORE"},
	"query_count":               {"QUERY_COUNT", "QUERYCOUNT"},
	"query_user_count":          {"QUERY_USER_COUNT", "QUERYUSERCOUNT"},
	"connection_qualified_name": {"CONNECTION_QUALIFIED_NAME", "CONNECTIONQUALIFIEDNAME"},
	"database_qualified_name":   {"DATABASE_QUALIFIED_NAME", "DATABASEQUALIFIEDNAME"},
	"schema_qualified_name":     {"SCHEMA_QUALIFIED_NAME", "SCHEMAQUALIFIEDNAME"},
	"domain_guids":              {"DOMAIN_GUIDS", "DOMAINGUIDS", "__DOMAINGUIDS"},
	"created_at":                {"CREATE_TIME", "CREATETIME", "__TIMESTAMP"},
	"updated_at":                {"UPDATE_TIME", "UPDATETIME", "__MODIFICATIONTIMESTAMP"},
	"source_updated_at":         {"SOURCE_UPDATED_AT", "SOURCEUPDATEDAT"},
}

// knownAttributes is the static list of attribute names known to exist in
// the reference vendor's asset payloads, used to accept camelCase-derived
// candidates that discovery did not surface.
var knownAttributes = map[string]struct{}{}

func init() {
	for _, attr := range attributeOverrides {
		knownAttributes[attr] = struct{}{}
	}
	for _, extra := range []string{
		"userDescription", "certificateUpdatedAt", "certificateUpdatedBy",
		"announcementTitle", "announcementMessage", "sourceCreatedAt",
		"lastSyncRunAt", "viewerUsers", "viewerGroups",
	} {
		knownAttributes[extra] = struct{}{}
	}
}

// AttributeOverride returns the vendor-native attribute for a canonical
// field, if one is defined.
func AttributeOverride(fieldID string) (string, bool) {
	attr, ok := attributeOverrides[fieldID]
	return attr, ok
}

// AliasGroup returns the warehouse column aliases for a canonical field.
func AliasGroup(fieldID string) []string {
	return aliasGroups[fieldID]
}

// IsKnownAttribute reports whether the attribute name appears in the static
// known-attribute list.
func IsKnownAttribute(name string) bool {
	_, ok := knownAttributes[name]
	return ok
}

// CamelCase derives the conventional attribute spelling from a snake_case
// canonical field id: owner_users becomes ownerUsers.
func CamelCase(fieldID string) string {
	parts := strings.Split(fieldID, "_")
	if len(parts) == 0 {
		return fieldID
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(parts[0]))
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(strings.ToLower(p[1:]))
	}
	return b.String()
}

// Normalize lowercases a name and strips underscores, hyphens and spaces,
// for custom-metadata name comparison.
func Normalize(name string) string {
	r := strings.NewReplacer("_", "", "-", "", " ", "")
	return r.Replace(strings.ToLower(name))
}

// classificationKeywords is the fixed allow-list of sensitivity/regulatory
// canonical fields eligible for the classification heuristic, with the
// keywords matched against classification display names. Extending this
// list is a product decision.
var classificationKeywords = map[string][]string{
	"pii":      {"pii", "personal"},
	"sensitiv": {"sensitive", "confidential"},
	"gdpr":      {"gdpr"},
	"hipaa":     {"hipaa", "phi"},
	"pci":       {"pci", "cardholder"},
	"sox":       {"sox"},
}

// ClassificationKeywords returns the match keywords when the canonical
// field is on the classification allow-list.
func ClassificationKeywords(fieldID string) ([]string, bool) {
	id := strings.ToLower(fieldID)
	for key, kws := range classificationKeywords {
		if strings.Contains(id, key) {
			return kws, true
		}
	}
	return nil, false
}
