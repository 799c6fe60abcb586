package command

// User-facing messages.
const (
	MessageInvalidIndex       = "The applicant index provided is invalid"
	MessageNoMatch            = "No matching applicant found"
	MessageNoResult           = "No result found"
	MessageTooManyMatches     = "%d persons matched keyword, please be more specific."
	MessageDuplicateApplicant = "This applicant already exists in the applicant book"
	MessagePersistFailed      = "Could not save the applicant book"
	MessageNothingToEdit      = "At least one field to edit must be provided."
	MessageExportUnavailable  = "Export is not available in this session"
	MessageCancelled          = "Command cancelled."

	MessageAdded         = "New applicant added: %s"
	MessageDeletedOne    = "Deleted Applicant: %s"
	MessageDeletedMany   = "Deleted Applicants:\n%s"
	MessageEdited        = "Edited Applicant: %s"
	MessageRated         = "Rated Applicant: %s"
	MessageStatusUpdated = "Updated status of %d applicant(s) to %s:\n%s"
	MessageListed        = "%d applicant(s) listed!"
	MessageListedAll     = "Listed all applicants"
	MessageSorted        = "Sorted applicants by %s in %s order."
	MessageUnknownSort   = "Unknown sort key %q; order unchanged."
	MessageExported      = "Exported %d applicant(s) to %s"
	MessageCleared       = "Applicant book has been cleared!"
	MessageHelp          = "Opened help window."
	MessageExit          = "Exiting applicant book as requested ..."
	MessageAvatarUpdated = "Updated avatar of Applicant: %s"
)

// Confirmation prompts.
const (
	confirmHint = "Type 'yes' to confirm, anything else to cancel."

	PromptDeleteOne       = "Are you sure you want to delete this applicant?\n%s\n" + confirmHint
	PromptDeleteOnlyMatch = "Are you sure you want to delete the only applicant matching the criteria?\n%s\n" + confirmHint
	PromptDeleteMany      = "Are you sure you want to delete these %d applicants?\n%s\n" + confirmHint

	PromptStatusOne       = "Are you sure you want to update the status of this applicant to %s?\n%s\n" + confirmHint
	PromptStatusOnlyMatch = "Are you sure you want to update the status of the only applicant matching the criteria to %s?\n%s\n" + confirmHint
	PromptStatusMany      = "Are you sure you want to update the status of these %d applicants to %s?\n%s\n" + confirmHint
)
