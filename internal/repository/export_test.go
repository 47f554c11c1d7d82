package repository

var ReplaceIfPresentHash = replaceIfPresent.Hash()
